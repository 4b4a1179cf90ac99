//go:build unix && !linux

package mmap

import "golang.org/x/sys/unix"

func adviceFor(pattern AccessPattern) (int, bool) {
	switch pattern {
	case AccessSequential:
		return unix.MADV_SEQUENTIAL, true
	case AccessRandom:
		return unix.MADV_RANDOM, true
	case AccessWillNeed:
		return unix.MADV_WILLNEED, true
	case AccessHugePage:
		return 0, false
	default:
		return unix.MADV_NORMAL, true
	}
}
