package esbuild

import (
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

// aliasPlugin resolves "@alias/rest" imports against a directory of the
// theme, e.g. "@components/button/src/button" into components/.
func aliasPlugin(root string, aliases map[string]string) api.Plugin {
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	// longest first so "@src-legacy" is never shadowed by "@src"
	sort.Slice(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })

	return api.Plugin{
		Name: "prism-aliases",
		Setup: func(build api.PluginBuild) {
			for _, name := range names {
				alias := name
				dir := aliases[alias]
				if !filepath.IsAbs(dir) {
					dir = filepath.Join(root, dir)
				}

				build.OnResolve(api.OnResolveOptions{Filter: "^" + regexp.QuoteMeta(alias) + "(/|$)"},
					func(args api.OnResolveArgs) (api.OnResolveResult, error) {
						rest := strings.TrimPrefix(strings.TrimPrefix(args.Path, alias), "/")
						resolved := build.Resolve("./"+rest, api.ResolveOptions{
							ResolveDir: dir,
							Importer:   args.Importer,
							Kind:       args.Kind,
						})
						if len(resolved.Errors) > 0 {
							return api.OnResolveResult{Errors: resolved.Errors}, nil
						}
						return api.OnResolveResult{
							Path:      resolved.Path,
							Namespace: resolved.Namespace,
							External:  resolved.External,
						}, nil
					})
			}
		},
	}
}

// buildEndPlugin calls onEnd once per completed build, after esbuild has
// produced every output file of that build.
func buildEndPlugin(onEnd func(api.BuildResult)) api.Plugin {
	return api.Plugin{
		Name: "prism-build-end",
		Setup: func(build api.PluginBuild) {
			build.OnEnd(func(result *api.BuildResult) (api.OnEndResult, error) {
				onEnd(*result)
				return api.OnEndResult{}, nil
			})
		},
	}
}
