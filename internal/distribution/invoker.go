package distribution

import (
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"runtime/debug"
	"strings"
)

// Invoker is the package that called into this library and the directory
// of the calling source file.
type Invoker struct {
	Package string
	Anchor  string
}

// frame is the part of a runtime frame that invoker discovery inspects.
type frame struct {
	Function string
	File     string
}

// ownPrefix is the import path prefix of this module's internal packages.
var ownPrefix = func() string {
	pkg := reflect.TypeOf(Information{}).PkgPath()
	return strings.TrimSuffix(pkg, "distribution")
}()

// LocateInvoker walks the call stack outward from its caller and returns the
// first frame that belongs to a package outside this module and outside the
// standard library. skip counts additional frames to pass over. With no
// qualifying frame, the anchor is the working directory.
//
// Build flags such as -trimpath make file paths relative; callers that need
// a reliable anchor should pass one explicitly.
func LocateInvoker(skip int) Invoker {
	pcs := make([]uintptr, 64)
	n := runtime.Callers(skip+2, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	var collected []frame
	for {
		f, more := frames.Next()
		collected = append(collected, frame{Function: f.Function, File: f.File})
		if !more {
			break
		}
	}
	return locateInvoker(collected, buildModules())
}

func locateInvoker(frames []frame, modules []string) Invoker {
	for _, f := range frames {
		pkg := packageOf(f.Function)
		if pkg == "" || pkg == "main" {
			continue
		}
		if strings.HasPrefix(pkg, ownPrefix) || isStandardLibrary(pkg) {
			continue
		}
		if f.File == "" || !filepath.IsAbs(f.File) {
			continue
		}
		return Invoker{
			Package: packageBoundary(pkg, modules),
			Anchor:  filepath.Dir(f.File),
		}
	}
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	return Invoker{Anchor: cwd}
}

// packageOf extracts the import path from a fully qualified function name
// such as "example.com/app/pkg.(*T).Method".
func packageOf(function string) string {
	if function == "" {
		return ""
	}
	slash := strings.LastIndex(function, "/")
	dot := strings.Index(function[slash+1:], ".")
	if dot < 0 {
		return ""
	}
	// The runtime escapes dots in the last path element.
	return strings.ReplaceAll(function[:slash+1+dot], "%2e", ".")
}

// isStandardLibrary reports whether pkg belongs to the Go distribution.
// Standard library import paths have no dot in their first element.
func isStandardLibrary(pkg string) bool {
	first, _, _ := strings.Cut(pkg, "/")
	return !strings.Contains(first, ".")
}

// packageBoundary returns the longest known module path that contains pkg,
// falling back to the first path element.
func packageBoundary(pkg string, modules []string) string {
	best := ""
	for _, mod := range modules {
		if (pkg == mod || strings.HasPrefix(pkg, mod+"/")) && len(mod) > len(best) {
			best = mod
		}
	}
	if best != "" {
		return best
	}
	first, _, _ := strings.Cut(pkg, "/")
	return first
}

func buildModules() []string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return nil
	}
	modules := []string{info.Main.Path}
	for _, dep := range info.Deps {
		modules = append(modules, dep.Path)
	}
	return modules
}
