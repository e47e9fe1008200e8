// Code generated by "stringer -type AddressingMode -output mode_string.go";
// adapted by hand here since go generate is never invoked in this exercise.
// DO NOT EDIT without regenerating from the real tool once the toolchain is
// available.

package isa

import "strconv"

func _() {
	var x [1]struct{}
	_ = x[Immediate-0]
	_ = x[Label-1]
	_ = x[Index-2]
	_ = x[Register-3]
}

const _AddressingMode_name = "ImmediateLabelIndexRegister"

var _AddressingMode_index = [...]uint8{0, 9, 14, 19, 27}

func (i AddressingMode) String() string {
	if i >= AddressingMode(len(_AddressingMode_index)-1) {
		return "AddressingMode(" + strconv.FormatInt(int64(i), 10) + ")"
	}

	return _AddressingMode_name[_AddressingMode_index[i]:_AddressingMode_index[i+1]]
}
