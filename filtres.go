package filtres

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	u "github.com/araddon/gou"

	"github.com/araddon/filtres/expr"
	"github.com/araddon/filtres/generators/elasticsearch/esgen"
	"github.com/araddon/filtres/generators/elasticsearch/gentypes"
	"github.com/araddon/filtres/lex"
)

var (
	// Debug logs the expression, tree and output of every compile.  Can be
	// turned on with env variable "filtrestrace=true"
	//
	//     export filtrestrace=true
	Debug bool

	defaultCompiler *Compiler
	defaultErr      error
	compilerOnce    sync.Once
)

func init() {
	if t := os.Getenv("filtrestrace"); t != "" {
		Debug = true
	}
}

func debugf(f string, args ...interface{}) {
	if Debug {
		u.DoLog(3, u.DEBUG, fmt.Sprintf(f, args...))
	}
}

// FuncMap is a set of named functions made available to expressions.  The
// grammar has no function call syntax yet, so they are accepted and ignored.
type FuncMap map[string]interface{}

// Compiler holds the grammar, generator and output schema.  It is read-only
// after New and safe for concurrent use.
type Compiler struct {
	grammar   *expr.Grammar
	gen       *esgen.FilterGenerator
	validator *gentypes.Validator
}

// New builds a Compiler, hosts that want construction up front (instead of
// on first Compile) hold on to one of these.
func New() (*Compiler, error) {
	v, err := gentypes.NewValidator()
	if err != nil {
		return nil, err
	}
	return &Compiler{
		grammar:   expr.NewGrammar(lex.FilterDialect),
		gen:       esgen.NewGenerator(),
		validator: v,
	}, nil
}

// Default returns the process wide Compiler, built on first use.
func Default() (*Compiler, error) {
	compilerOnce.Do(func() {
		defaultCompiler, defaultErr = New()
	})
	return defaultCompiler, defaultErr
}

// Compile the expression into a filtered query using the default Compiler.
//
//    q, err := filtres.Compile(`height == 73`)
//
func Compile(expression string, extraFunctions ...FuncMap) (*gentypes.Query, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}
	return c.Compile(expression, extraFunctions...)
}

// CompileJSON compile the expression into the json query document using the
// default Compiler.
func CompileJSON(expression string, extraFunctions ...FuncMap) ([]byte, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}
	return c.CompileJSON(expression, extraFunctions...)
}

// Parse the expression into its tree, without generating a query.
func (c *Compiler) Parse(expression string) (*expr.Tree, error) {
	return c.grammar.Parse(expression)
}

// Schema the json schema every compiled document satisfies.
func (c *Compiler) Schema() []byte {
	return c.validator.Schema()
}

// Compile the expression into a filtered query.
func (c *Compiler) Compile(expression string, extraFunctions ...FuncMap) (*gentypes.Query, error) {
	q, _, err := c.compile(expression, extraFunctions)
	return q, err
}

// CompileJSON compile the expression into the json query document.
func (c *Compiler) CompileJSON(expression string, extraFunctions ...FuncMap) ([]byte, error) {
	_, by, err := c.compile(expression, extraFunctions)
	return by, err
}

func (c *Compiler) compile(expression string, extraFunctions []FuncMap) (*gentypes.Query, []byte, error) {
	if len(extraFunctions) > 0 {
		u.Debugf("ignoring %d function maps, expressions have no function calls", len(extraFunctions))
	}
	debugf("compile: %q", expression)

	tree, err := c.grammar.Parse(expression)
	if err != nil {
		return nil, nil, err
	}
	debugf("tree: %s", tree)

	q, err := c.gen.Walk(tree)
	if err != nil {
		return nil, nil, err
	}

	by, err := json.Marshal(q)
	if err != nil {
		// a number literal that is not a json number, 007
		return nil, nil, gentypes.Malformed(expression, err)
	}
	if err := c.validator.Validate(by); err != nil {
		return nil, nil, err
	}
	debugf("query: %s", by)
	return q, by, nil
}
