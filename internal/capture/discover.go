package capture

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// photoExts contains photo file extensions picked up when walking directories.
var photoExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".tif":  true,
	".tiff": true,
	".heic": true,
	".hif":  true, // Apple HEIF (alternate extension)
	".dng":  true, // Adobe Digital Negative
	".arw":  true, // Sony RAW
	".cr2":  true, // Canon RAW
	".nef":  true, // Nikon RAW
	".raf":  true, // Fujifilm RAW
}

// videoExts contains video file extensions picked up when walking directories.
var videoExts = map[string]bool{
	".mp4": true,
	".mov": true,
	".avi": true,
	".mkv": true,
}

// skipFolders contains directory names never descended into.
var skipFolders = map[string]bool{
	".stfolder":       true, // Syncthing
	".fseventsd":      true, // macOS filesystem events
	".Trashes":        true, // macOS trash
	".Spotlight-V100": true, // macOS Spotlight index
	"PRIVATE":         true, // Camera system folder
	"AVF_INFO":        true, // Sony AVCHD info
	"THMBNL":          true, // Sony thumbnails
	"@eaDir":          true, // Synology thumbnails
}

// IsMediaFile reports whether name has a supported photo or video extension.
func IsMediaFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return photoExts[ext] || videoExts[ext]
}

// Expand turns command line paths into the list of files to resolve.
// Files are kept as given, whatever their extension, including paths that
// do not exist. Directories are walked in lexical order for media files,
// skipping hidden entries and system folders.
func Expand(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil || !info.IsDir() {
			files = append(files, p)
			continue
		}
		found, err := walkMedia(p)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}

func walkMedia(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrPermission) {
				return nil // Skip unreadable entries, continue walking
			}
			return err
		}

		name := d.Name()
		if d.IsDir() {
			if path != root && (strings.HasPrefix(name, ".") || skipFolders[name]) {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(name, ".") {
			return nil
		}
		if IsMediaFile(name) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
