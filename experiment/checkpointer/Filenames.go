package checkpointer

import (
	"fmt"
	"time"
)

// FilenameEnumerator returns a function generating consecutive
// filenames name<i>ext for i = start+1, start+2, ... The name may
// include a directory.
func FilenameEnumerator(start int, name, ext string) func() string {
	i := start
	return func() string {
		i++
		return fmt.Sprintf("%v%v%v", name, i, ext)
	}
}

// FileTimer returns a function generating filenames name-<ns>ext,
// where ns is the current Unix time in nanoseconds
func FileTimer(name, ext string) func() string {
	return func() string {
		return fmt.Sprintf("%v-%v%v", name, time.Now().UnixNano(), ext)
	}
}
