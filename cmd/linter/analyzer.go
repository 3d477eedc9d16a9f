// Command linter runs the envaccess analyzer, which checks for:
// 1. Environment reads (os.Getenv, os.LookupEnv, os.Environ) outside package config
// 2. Usage of built-in panic() function anywhere in the code
// 3. Usage of log.Fatal()/log.Fatalf()/log.Fatalln() or os.Exit() outside of main function in main package
package main

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/analysis/singlechecker"
	"golang.org/x/tools/go/ast/inspector"
)

// configPackage is the only package allowed to read the process environment.
const configPackage = "config"

// Analyzer reports ambient configuration access and improper exits
var Analyzer = &analysis.Analyzer{
	Name: "envaccess",
	Doc:  "reports environment reads outside package config, panic, and log.Fatal/os.Exit outside of main",
	Run:  run,
	Requires: []*analysis.Analyzer{
		inspect.Analyzer,
	},
}

func main() {
	singlechecker.Main(Analyzer)
}

func run(pass *analysis.Pass) (interface{}, error) {
	inspect := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.CallExpr)(nil),
	}

	inspect.WithStack(nodeFilter, func(n ast.Node, push bool, stack []ast.Node) bool {
		if !push {
			return true
		}
		call := n.(*ast.CallExpr)

		if ident, ok := call.Fun.(*ast.Ident); ok && ident.Name == "panic" {
			if _, builtin := pass.TypesInfo.Uses[ident].(*types.Builtin); builtin {
				pass.Reportf(ident.Pos(), "found usage of panic")
			}
			return true
		}

		name := calleeName(pass, call)
		switch name {
		case "os.Getenv", "os.LookupEnv", "os.Environ":
			if pass.Pkg.Name() != configPackage {
				pass.Reportf(call.Pos(), "%s reads the environment outside package %s", name, configPackage)
			}
		case "log.Fatal", "log.Fatalf", "log.Fatalln", "os.Exit":
			inMain := pass.Pkg.Name() == "main" && enclosingFunc(stack) == "main"
			if !inMain {
				pass.Reportf(call.Pos(), "found usage of %s outside of main function", name)
			}
		}
		return true
	})

	return nil, nil
}

// calleeName returns "path.Func" for calls to package-level functions, or "".
func calleeName(pass *analysis.Pass, call *ast.CallExpr) string {
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok {
		return ""
	}
	ident, ok := sel.X.(*ast.Ident)
	if !ok {
		return ""
	}
	pkgName, ok := pass.TypesInfo.Uses[ident].(*types.PkgName)
	if !ok {
		return ""
	}
	return pkgName.Imported().Path() + "." + sel.Sel.Name
}

func enclosingFunc(stack []ast.Node) string {
	for i := len(stack) - 1; i >= 0; i-- {
		if decl, ok := stack[i].(*ast.FuncDecl); ok {
			return decl.Name.Name
		}
	}
	return ""
}
