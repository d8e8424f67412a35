// SPDX-License-Identifier: EPL-2.0

package audplay_test

import (
	"errors"
	"fmt"

	"github.com/ik5/audplay"
)

func ExampleLoadSoundFile() {
	_, err := audplay.LoadSoundFile("does/not/exist.wav")
	fmt.Println(errors.Is(err, audplay.ErrDecode))
	// Output: true
}
