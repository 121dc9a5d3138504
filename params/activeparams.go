// Copyright (c) 2017-2018 The qitmeer developers
// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package params

import (
	"fmt"
	"strings"
)

// ActiveNetParams is a pointer to the parameters specific to the
// currently active network.
var ActiveNetParams = &MainNetParams

// networks lists every known network by name.
var networks = []*Params{&MainNetParams, &TestNetParams, &PrivNetParams}

// ByName returns the parameters of the network called name.
func ByName(name string) (*Params, error) {
	name = strings.ToLower(name)
	for _, p := range networks {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("unknown network %q", name)
}
