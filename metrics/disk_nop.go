// Copyright (c) 2017-2019 The Qitmeer developers
//
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

//go:build !linux
// +build !linux

package metrics

import "github.com/pkg/errors"

// ReadDiskStats is only implemented on linux.
func ReadDiskStats(stats *DiskStats) error {
	return errors.New("disk stats are not implemented")
}
