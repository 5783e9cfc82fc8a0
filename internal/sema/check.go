package sema

import (
	"ssc/internal/ast"
	"ssc/internal/diag"
	"ssc/internal/trace"
	"ssc/internal/types"
)

// Options configure a checking run over one file.
type Options struct {
	Reporter diag.Reporter
	Types    *types.Interner
	Tracer   trace.Tracer
	// TraceParent is the span the checker's spans nest under.
	TraceParent uint64
	Policy      Policy
}

// Result stores what a checking run produced.
type Result struct {
	TypeInterner *types.Interner
	// DefTypes holds the resolved inferred type of every definition that
	// passed, keyed by item.
	DefTypes map[ast.ItemID]types.TypeID
	// Err is the first failure, nil when the module is well typed.
	Err CheckError
}

// OK reports whether the module passed.
func (r Result) OK() bool { return r.Err == nil }

// Check runs COLLECT then CHECK over fileID. The first failure stops the
// run; it is emitted to opts.Reporter and returned in Result.Err.
func Check(builder *ast.Builder, fileID ast.FileID, opts Options) Result {
	res := Result{
		DefTypes: make(map[ast.ItemID]types.TypeID),
	}
	if builder == nil {
		res.TypeInterner = opts.Types
		return res
	}
	if opts.Types != nil {
		res.TypeInterner = opts.Types
	} else {
		res.TypeInterner = types.NewInterner(builder.StringsInterner)
	}
	if opts.Tracer == nil {
		opts.Tracer = trace.Nop
	}
	if fileID == ast.NoFileID {
		return res
	}
	file := builder.Files.Get(fileID)
	if file == nil {
		return res
	}

	c := &checker{
		builder:      builder,
		types:        res.TypeInterner,
		reporter:     opts.Reporter,
		tracer:       opts.Tracer,
		policy:       opts.Policy,
		declaredVars: make(map[uint32]types.TypeID),
		result:       &res,
	}
	c.unifier = newUnifier(c.types, c.tracer)

	span := trace.Begin(c.tracer, trace.ScopePass, "sema", opts.TraceParent)
	c.traceParent = span.ID()
	err := c.run(file)
	if err != nil {
		res.Err = err
		trace.Fail(c.tracer, trace.ScopePass, "sema", span.ID(), err.Error())
		if c.reporter != nil {
			diag.ReportDiagnostic(c.reporter, err.Diagnostic())
		}
		span.WithExtra("result", "fail")
	} else {
		span.WithExtra("result", "ok")
	}
	span.End("")
	return res
}

type checker struct {
	builder  *ast.Builder
	types    *types.Interner
	reporter diag.Reporter
	tracer   trace.Tracer
	policy   Policy
	unifier  *unifier
	result   *Result

	nextVar      uint32
	declaredVars map[uint32]types.TypeID
	traceParent  uint64
}

func (c *checker) run(file *ast.File) CheckError {
	env := c.collect(file)

	if c.policy.DuplicateDecls == DuplicateError && len(env.dups) > 0 {
		d := env.dups[0]
		return &DuplicateDeclarationError{
			Name:  c.builder.Name(d.name),
			Where: d.second.span,
			First: d.first.span,
		}
	}

	for _, id := range env.checklist {
		if err := c.checkDefinition(env, id); err != nil {
			return err
		}
	}
	return nil
}

func (c *checker) checkDefinition(env environment, id ast.ItemID) CheckError {
	item := c.builder.Items.Get(id)
	nameID, _, _ := c.builder.Items.Name(id)
	name := c.builder.Name(nameID)

	span := trace.Begin(c.tracer, trace.ScopeDefinition, "def:"+name, c.traceParent)
	c.unifier.parent = span.ID()
	defer span.End("")

	decl, ok := env.decls[nameID]
	if !ok {
		return &IdentifierNotFoundError{Name: name, Where: item.Span, Definition: true}
	}

	var (
		inferred types.TypeID
		err      CheckError
	)
	switch item.Kind {
	case ast.ItemProc:
		proc, _ := c.builder.Items.Proc(id)
		inferred, err = c.inferFn(env.root, c.builder.Items.ProcParams(proc), proc.Body)
	case ast.ItemVar:
		v, _ := c.builder.Items.Var(id)
		inferred, err = c.infer(env.root, v.Value)
	}
	if err != nil {
		return err
	}

	if f := c.unifier.unify(decl.typ, inferred); f != nil {
		if f.kind == failOccurs {
			return newOccursCheck(c.types, name, f, item.Span)
		}
		return newTypeMismatch(c.types, name, decl.typ, inferred, f, item.Span, decl.span)
	}

	resolved := c.unifier.resolve(inferred)
	if free := c.unifier.freeVars(resolved, nil); len(free) > 0 {
		return &UnresolvedTypeVarError{
			Name:      name,
			Var:       free[0],
			Type:      resolved,
			Where:     item.Span,
			varLabel:  types.Label(c.types, free[0]),
			typeLabel: types.Label(c.types, resolved),
		}
	}

	c.result.DefTypes[id] = resolved
	span.WithExtra("type", types.Label(c.types, resolved))
	return nil
}
