//go:build glpk

package glpk

// #include <stddef.h>
import "C"

import "unsafe"

//export solvertermTermHook
func solvertermTermHook(info unsafe.Pointer, s *C.char) C.int {
	return C.int(dispatch(C.GoString(s)))
}

//export solvertermTreeHook
func solvertermTreeHook(reason C.int) {
	recordReason(Reason(reason))
}
