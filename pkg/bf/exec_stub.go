//go:build !(linux && amd64)

package bf

import "errors"

func invoke(code, tape []byte) error {
	return errors.New("native execution requires linux/amd64")
}
