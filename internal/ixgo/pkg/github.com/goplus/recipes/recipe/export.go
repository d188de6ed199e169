// export by github.com/goplus/ixgo/cmd/qexp

package recipe

import (
	q "github.com/goplus/recipes/recipe"

	"go/constant"
	"reflect"

	"github.com/goplus/ixgo"
)

func init() {
	ixgo.RegisterPackage(&ixgo.Package{
		Name: "recipe",
		Path: "github.com/goplus/recipes/recipe",
		Deps: map[string]string{
			"github.com/goplus/recipes/pkgs/gnu":            "gnu",
			"github.com/goplus/recipes/pkgs/mod/constraint": "constraint",
			"github.com/goplus/recipes/pkgs/mod/module":     "module",
			"github.com/qiniu/x/gsh":                        "gsh",
		},
		Interfaces: map[string]reflect.Type{},
		NamedTypes: map[string]reflect.Type{
			"BuildSystem":    reflect.TypeOf((*q.BuildSystem)(nil)).Elem(),
			"Config":         reflect.TypeOf((*q.Config)(nil)).Elem(),
			"Context":        reflect.TypeOf((*q.Context)(nil)).Elem(),
			"CppInfo":        reflect.TypeOf((*q.CppInfo)(nil)).Elem(),
			"Facts":          reflect.TypeOf((*q.Facts)(nil)).Elem(),
			"FileOp":         reflect.TypeOf((*q.FileOp)(nil)).Elem(),
			"FileOpKind":     reflect.TypeOf((*q.FileOpKind)(nil)).Elem(),
			"Info":           reflect.TypeOf((*q.Info)(nil)).Elem(),
			"Layout":         reflect.TypeOf((*q.Layout)(nil)).Elem(),
			"Matrix":         reflect.TypeOf((*q.Matrix)(nil)).Elem(),
			"Option":         reflect.TypeOf((*q.Option)(nil)).Elem(),
			"OptionError":    reflect.TypeOf((*q.OptionError)(nil)).Elem(),
			"Recipe":         reflect.TypeOf((*q.Recipe)(nil)).Elem(),
			"RecipeF":        reflect.TypeOf((*q.RecipeF)(nil)).Elem(),
			"ReqOption":      reflect.TypeOf((*q.ReqOption)(nil)).Elem(),
			"Requirement":    reflect.TypeOf((*q.Requirement)(nil)).Elem(),
			"RequirementSet": reflect.TypeOf((*q.RequirementSet)(nil)).Elem(),
			"Requirements":   reflect.TypeOf((*q.Requirements)(nil)).Elem(),
			"Schema":         reflect.TypeOf((*q.Schema)(nil)).Elem(),
			"Settings":       reflect.TypeOf((*q.Settings)(nil)).Elem(),
			"StandardError":  reflect.TypeOf((*q.StandardError)(nil)).Elem(),
			"Toolchain":      reflect.TypeOf((*q.Toolchain)(nil)).Elem(),
			"Value":          reflect.TypeOf((*q.Value)(nil)).Elem(),
			"ValueKind":      reflect.TypeOf((*q.ValueKind)(nil)).Elem(),
			"Values":         reflect.TypeOf((*q.Values)(nil)).Elem(),
		},
		AliasTypes: map[string]reflect.Type{},
		Vars: map[string]reflect.Value{
			"ErrInvalidConfiguration": reflect.ValueOf(&q.ErrInvalidConfiguration),
			"ErrInvalidOption":        reflect.ValueOf(&q.ErrInvalidOption),
			"ErrMissingOption":        reflect.ValueOf(&q.ErrMissingOption),
			"ErrUnmappedOption":       reflect.ValueOf(&q.ErrUnmappedOption),
			"ErrUnsupportedStandard":  reflect.ValueOf(&q.ErrUnsupportedStandard),
		},
		Funcs: map[string]reflect.Value{
			"BoolOption":         reflect.ValueOf(q.BoolOption),
			"BoolValue":          reflect.ValueOf(q.BoolValue),
			"CheckMinCppStd":     reflect.ValueOf(q.CheckMinCppStd),
			"DefaultCppStd":      reflect.ValueOf(q.DefaultCppStd),
			"DefaultSettings":    reflect.ValueOf(q.DefaultSettings),
			"EffectiveCppStd":    reflect.ValueOf(q.EffectiveCppStd),
			"EnumOption":         reflect.ValueOf(q.EnumOption),
			"Gopt_RecipeF_Main":  reflect.ValueOf(q.Gopt_RecipeF_Main),
			"Invalid":            reflect.ValueOf(q.Invalid),
			"LinkLike":           reflect.ValueOf(q.LinkLike),
			"MatrixOf":           reflect.ValueOf(q.MatrixOf),
			"New":                reflect.ValueOf(q.New),
			"NewContext":         reflect.ValueOf(q.NewContext),
			"NewSchema":          reflect.ValueOf(q.NewSchema),
			"NewToolchain":       reflect.ValueOf(q.NewToolchain),
			"NewValues":          reflect.ValueOf(q.NewValues),
			"ParseSettings":      reflect.ValueOf(q.ParseSettings),
			"RemoveFPICIfShared": reflect.ValueOf(q.RemoveFPICIfShared),
			"StringValue":        reflect.ValueOf(q.StringValue),
			"TransitiveHeaders":  reflect.ValueOf(q.TransitiveHeaders),
			"TransitiveLibs":     reflect.ValueOf(q.TransitiveLibs),
			"WithOption":         reflect.ValueOf(q.WithOption),
		},
		TypedConsts: map[string]ixgo.TypedConst{
			"Autotools":  {reflect.TypeOf(q.Autotools), constant.MakeString(string(q.Autotools))},
			"CMake":      {reflect.TypeOf(q.CMake), constant.MakeString(string(q.CMake))},
			"KindBool":   {reflect.TypeOf(q.KindBool), constant.MakeInt64(int64(q.KindBool))},
			"KindString": {reflect.TypeOf(q.KindString), constant.MakeInt64(int64(q.KindString))},
			"KindUnset":  {reflect.TypeOf(q.KindUnset), constant.MakeInt64(int64(q.KindUnset))},
			"OpCopy":     {reflect.TypeOf(q.OpCopy), constant.MakeInt64(int64(q.OpCopy))},
			"OpRm":       {reflect.TypeOf(q.OpRm), constant.MakeInt64(int64(q.OpRm))},
			"OpRmdir":    {reflect.TypeOf(q.OpRmdir), constant.MakeInt64(int64(q.OpRmdir))},
		},
		UntypedConsts: map[string]ixgo.UntypedConst{
			"False":               {"untyped string", constant.MakeString(string(q.False))},
			"GopPackage":          {"untyped bool", constant.MakeBool(bool(q.GopPackage))},
			"LicenseDir":          {"untyped string", constant.MakeString(string(q.LicenseDir))},
			"None":                {"untyped string", constant.MakeString(string(q.None))},
			"PropCMakeFileName":   {"untyped string", constant.MakeString(string(q.PropCMakeFileName))},
			"PropCMakeTargetName": {"untyped string", constant.MakeString(string(q.PropCMakeTargetName))},
			"PropPkgConfigName":   {"untyped string", constant.MakeString(string(q.PropPkgConfigName))},
			"True":                {"untyped string", constant.MakeString(string(q.True))},
		},
	})
}
