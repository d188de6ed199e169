package recipe

import (
	"strings"
	"testing"
)

func TestCppInfo_Flags(t *testing.T) {
	info := CppInfo{}
	info.AddLibs("glog")
	info.AddSystemLibs("pthread")
	info.AddDefines("GLOG_USE_GLOG_EXPORT=")

	got := info.Flags("/opt/glog")
	want := "-I/opt/glog/include -DGLOG_USE_GLOG_EXPORT= -L/opt/glog/lib -lglog -lpthread"
	if got != want {
		t.Errorf("Flags() = %q, want %q", got, want)
	}
}

func TestCppInfo_PkgConfig(t *testing.T) {
	info := CppInfo{}
	info.SetProperty(PropPkgConfigName, "libglog")
	info.AddLibs("glogd")
	info.AddSystemLibs("dbghelp")

	pc := info.PkgConfig("/opt/glog", "glog", "0.7.1", "Google logging library")
	for _, want := range []string{
		"prefix=/opt/glog\n",
		"Name: libglog\n",
		"Version: 0.7.1\n",
		"Libs: -L${libdir} -lglogd\n",
		"Libs.private: -ldbghelp\n",
		"Cflags: -I${includedir}\n",
	} {
		if !strings.Contains(pc, want) {
			t.Errorf("PkgConfig() missing %q in:\n%s", want, pc)
		}
	}
}

func TestCppInfo_Clone(t *testing.T) {
	info := CppInfo{}
	info.AddDefines("A")
	info.SetProperty(PropCMakeFileName, "glog")
	c := info.Clone()
	c.AddDefines("B")
	c.SetProperty(PropCMakeFileName, "other")
	if len(info.Defines) != 1 || info.Property(PropCMakeFileName) != "glog" {
		t.Errorf("Clone() shares state with the original: %+v", info)
	}
}

func TestLayout(t *testing.T) {
	var l Layout
	l.CopyLicense("COPYING", "")
	l.Rmdir("lib/cmake")
	l.Rm("*.dll", "bin", true, "keep.dll")

	if n := len(l.Copies()); n != 1 {
		t.Errorf("len(Copies()) = %d, want 1", n)
	}
	rm := l.Removals()
	if len(rm) != 2 || rm[0].Kind != OpRmdir || rm[1].Kind != OpRm {
		t.Errorf("Removals() = %+v", rm)
	}
	if l.Ops()[0].Dst != LicenseDir {
		t.Errorf("CopyLicense() dst = %q, want %q", l.Ops()[0].Dst, LicenseDir)
	}
}
