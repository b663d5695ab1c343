package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// pkgInfo is the part of `go list -json` output the linter reads.
type pkgInfo struct {
	Dir         string   `json:"Dir"`
	GoFiles     []string `json:"GoFiles"`
	TestGoFiles []string `json:"TestGoFiles"`
}

// finding is one missing doc comment.
type finding struct {
	pos token.Position
	msg string
}

// report collects findings up to an optional limit.
type report struct {
	limit     int
	findings  []finding
	truncated bool
}

// add records a finding and reports whether more are accepted.
func (r *report) add(f finding) bool {
	r.findings = append(r.findings, f)
	if r.limit > 0 && len(r.findings) >= r.limit {
		r.truncated = true
		return false
	}
	return true
}

// print writes the findings and returns an error when there are any.
func (r *report) print(w io.Writer) error {
	if len(r.findings) == 0 {
		return nil
	}
	for _, f := range r.findings {
		fmt.Fprintf(w, "%s:%d:%d: %s\n", relativePath(f.pos.Filename), f.pos.Line, f.pos.Column, f.msg)
	}
	if r.truncated {
		fmt.Fprintf(w, "commentlint: output truncated after %d issues (see .golangci.yml)\n", r.limit)
	}
	return fmt.Errorf("%d declarations without doc comments", len(r.findings))
}

// lint parses every non-excluded file of pkgs and checks its declarations.
func lint(pkgs []pkgInfo, cfg golangciConfig, types bool) (*report, error) {
	skip, err := newFilter(cfg)
	if err != nil {
		return nil, err
	}
	rep := &report{limit: cfg.Issues.MaxIssuesPerLinter}
	fset := token.NewFileSet()
	for _, pkg := range pkgs {
		files := append(append([]string{}, pkg.GoFiles...), pkg.TestGoFiles...)
		for _, name := range files {
			filename := filepath.Join(pkg.Dir, name)
			if skip.excluded(filepath.ToSlash(relativePath(filename))) || isGeneratedFile(filename) {
				continue
			}
			f, err := parser.ParseFile(fset, filename, nil, parser.ParseComments)
			if err != nil {
				return nil, fmt.Errorf("parse %s: %w", filename, err)
			}
			for _, fd := range checkFile(fset, f, types) {
				if !rep.add(fd) {
					return rep, nil
				}
			}
		}
	}
	return rep, nil
}

// checkFile returns the undocumented functions, and types when asked, of f.
func checkFile(fset *token.FileSet, f *ast.File, types bool) []finding {
	var out []finding
	for _, decl := range f.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			if d.Body != nil && !hasDoc(d.Doc) {
				out = append(out, finding{
					pos: fset.Position(d.Pos()),
					msg: fmt.Sprintf("missing doc comment for function %q", d.Name.Name),
				})
			}
		case *ast.GenDecl:
			if !types || d.Tok != token.TYPE {
				continue
			}
			for _, spec := range d.Specs {
				ts := spec.(*ast.TypeSpec)
				if hasDoc(ts.Doc) || (len(d.Specs) == 1 && hasDoc(d.Doc)) {
					continue
				}
				if !ts.Name.IsExported() {
					continue
				}
				out = append(out, finding{
					pos: fset.Position(ts.Pos()),
					msg: fmt.Sprintf("missing doc comment for type %q", ts.Name.Name),
				})
			}
		}
	}
	return out
}

// hasDoc reports whether a comment group carries text.
func hasDoc(doc *ast.CommentGroup) bool {
	return doc != nil && strings.TrimSpace(doc.Text()) != ""
}

// listPackages invokes `go list -json` for the provided patterns.
func listPackages(patterns []string) ([]pkgInfo, error) {
	args := append([]string{"list", "-json"}, patterns...)
	cmd := exec.Command("go", args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bufio.NewReader(stdout))
	var pkgs []pkgInfo
	for dec.More() {
		var info pkgInfo
		if err := dec.Decode(&info); err != nil {
			_ = cmd.Wait()
			return nil, err
		}
		pkgs = append(pkgs, info)
	}
	if err := cmd.Wait(); err != nil {
		return nil, err
	}
	return pkgs, nil
}

// isGeneratedFile checks the first lines for the standard generated header.
func isGeneratedFile(filename string) bool {
	f, err := os.Open(filename)
	if err != nil {
		return false
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for i := 0; i < 10 && scanner.Scan(); i++ {
		line := scanner.Text()
		if strings.Contains(line, "Code generated") || strings.Contains(line, "DO NOT EDIT") {
			return true
		}
	}
	return false
}

// relativePath converts a path to one relative to the repo root when possible.
func relativePath(path string) string {
	if rel, err := filepath.Rel(".", path); err == nil {
		return rel
	}
	return path
}
