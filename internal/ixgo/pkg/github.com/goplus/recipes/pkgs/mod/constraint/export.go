// export by github.com/goplus/ixgo/cmd/qexp

package constraint

import (
	q "github.com/goplus/recipes/pkgs/mod/constraint"

	"reflect"

	"github.com/goplus/ixgo"
)

func init() {
	ixgo.RegisterPackage(&ixgo.Package{
		Name: "constraint",
		Path: "github.com/goplus/recipes/pkgs/mod/constraint",
		Deps: map[string]string{
			"github.com/goplus/recipes/pkgs/gnu": "gnu",
		},
		Interfaces: map[string]reflect.Type{},
		NamedTypes: map[string]reflect.Type{
			"Constraint": reflect.TypeOf((*q.Constraint)(nil)).Elem(),
		},
		AliasTypes: map[string]reflect.Type{},
		Vars:       map[string]reflect.Value{},
		Funcs: map[string]reflect.Value{
			"Compare": reflect.ValueOf(q.Compare),
			"Parse":   reflect.ValueOf(q.Parse),
		},
		TypedConsts:   map[string]ixgo.TypedConst{},
		UntypedConsts: map[string]ixgo.UntypedConst{},
	})
}
