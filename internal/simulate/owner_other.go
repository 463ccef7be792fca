//go:build !unix

package simulate

import "errors"

func statOwner(string) (string, error) {
	return "", errors.New("file ownership is not available on this platform")
}
