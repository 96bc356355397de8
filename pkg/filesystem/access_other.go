//go:build !unix

package filesystem

import "os"

func accessWritable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return modeWritable(path, info)
}
