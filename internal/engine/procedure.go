// Released under an MIT license. See LICENSE.

package engine

import (
	"strconv"
	"strings"

	"github.com/michaelmacinnis/knot/internal/common/code"
	"github.com/michaelmacinnis/knot/internal/common/type/value"
)

// Procedure is a command defined by a script. When called, the arguments
// are bound in the calling statement's frame as 0 through n, as args (all
// but the name) and under the procedure's parameter names. If the last
// parameter is named args it collects any remaining arguments.
type Procedure struct {
	body   *value.T
	e      *T
	params []string
}

// NewProcedure creates a procedure that runs body with the parameters
// named in params. The procedure owns a reference to body.
func (e *T) NewProcedure(params []string, body *value.T) *Procedure {
	return &Procedure{
		body:   body.Retain(),
		e:      e,
		params: params,
	}
}

// Call binds args and runs the procedure's body. A return from the body
// becomes code.OK.
func (p *Procedure) Call(args []*value.T) code.T {
	e := p.e
	f := e.Frame()

	given := args[1:]
	params := p.params
	variadic := len(params) > 0 && params[len(params)-1] == "args"

	if variadic {
		params = params[:len(params)-1]
	}

	if len(given) < len(params) || (!variadic && len(given) > len(params)) {
		usage := append([]string{args[0].String()}, p.params...)

		return e.Fail("wrong # args: should be \"%s\"", strings.Join(usage, " "))
	}

	for i, a := range args {
		f.Set(strconv.Itoa(i), a)
	}

	for i, name := range params {
		f.Set(name, given[i])
	}

	if variadic {
		f.Set("args", value.List(given[len(params):]...))
	} else {
		f.Set("args", value.List(given...))
	}

	c := e.Call(p.body)
	if c == code.Return {
		c = code.OK
	}

	return c
}
