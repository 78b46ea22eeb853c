// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// A Connection connects a part pin (PP) to a wire of its host (CP). Either
// side may be a bus range like "out[0..3]" or a whole bus name.
//
type Connection struct {
	PP string
	CP string
}

// ParseConnections parses a connection string of the form:
//
//	"a=x, b=true, out[0..3]=w[4..7], bus=bus"
//
// Whitespace around names is ignored. An empty string yields no connections,
// which leaves all inputs of the part tied to false.
//
func ParseConnections(c string) ([]Connection, error) {
	if strings.TrimSpace(c) == "" {
		return nil, nil
	}
	var conns []Connection
	for _, f := range strings.Split(c, ",") {
		kv := strings.Split(f, "=")
		if len(kv) != 2 {
			return nil, errors.Errorf("in %q: malformed connection %q", c, strings.TrimSpace(f))
		}
		k, v := strings.TrimSpace(kv[0]), strings.TrimSpace(kv[1])
		if k == "" || v == "" {
			return nil, errors.Errorf("in %q: invalid pin mapping %s=%s", c, k, v)
		}
		conns = append(conns, Connection{PP: k, CP: v})
	}
	return conns, nil
}

// expandRange expands a bus range "bus[a..b]" into individual pin names.
// Names without a range are returned as is.
//
func expandRange(name string) ([]string, error) {
	i := strings.IndexByte(name, '[')
	if i < 0 {
		return []string{name}, nil
	}
	bus := name[:i]
	if bus == "" {
		return nil, errors.New("empty bus name in " + name)
	}
	if !strings.HasSuffix(name, "]") {
		return nil, errors.New("no terminating ] in " + name)
	}
	n := name[i+1 : len(name)-1]
	j := strings.Index(n, "..")
	if j < 0 {
		if _, err := strconv.Atoi(n); err != nil {
			return nil, errors.New("invalid bus index in " + name)
		}
		return []string{name}, nil
	}
	start, err := strconv.Atoi(n[:j])
	if err != nil {
		return nil, errors.Wrap(err, "bus range start in "+name)
	}
	end, err := strconv.Atoi(n[j+2:])
	if err != nil {
		return nil, errors.Wrap(err, "bus range end in "+name)
	}
	if start < 0 || end < start {
		return nil, errors.New("invalid bus range in " + name)
	}
	r := make([]string, 0, end-start+1)
	for i := start; i <= end; i++ {
		r = append(r, BusPinName(bus, i))
	}
	return r, nil
}
