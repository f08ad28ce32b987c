//go:build !windows

package journal

// openVolumeDevice has no implementation outside Windows: the USN change
// journal is an NTFS-only facility.
func openVolumeDevice(volume string) (volumeDevice, error) {
	return nil, ErrUnsupportedPlatform
}
