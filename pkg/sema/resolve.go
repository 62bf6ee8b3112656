package sema

// ErrNestingTooDeep is the message of the error reported when a label's
// auto scope prefix is longer than the scope stack.
const ErrNestingTooDeep = "Auto nesting too deep."

// resolver carries the open label scopes through one pass over a file.
type resolver struct {
	scopes []string
}

// Resolve fills in the Resolved field of every label in f, walking the
// statements in source order. A label directive closes every scope deeper
// than its prefix and then opens its own.
//
// Resolve stops at the first error, which is a *Error.
func Resolve(f *File) error {
	r := &resolver{}
	for _, s := range f.Statements {
		if err := r.statement(s); err != nil {
			return err
		}
	}
	return nil
}

func (r *resolver) statement(s Statement) error {
	switch s := s.(type) {
	case *ImportDirective:
		if err := r.definition(&s.LabelIntern, s.Line()); err != nil {
			return err
		}
		r.external(&s.LabelExtern)
	case *ExportDirective:
		if err := r.access(&s.LabelIntern, s.Line()); err != nil {
			return err
		}
		r.external(&s.LabelExtern)
	case *ResDirective:
		return r.definition(&s.Label, s.Line())
	case *LabelDirective:
		if err := r.definition(&s.Label, s.Line()); err != nil {
			return err
		}
		r.scopes = append(r.scopes[:s.Label.PrefixCount], s.Label.Label)
	case *Macro:
		for _, a := range s.Args {
			if acc, ok := a.(*LabelAccess); ok {
				if err := r.access(acc, s.Line()); err != nil {
					return err
				}
			}
		}
	case *Instruction, *StartDirective:
	}
	return nil
}

// qualify prepends the first prefix open scopes to the explicit scopes and
// the label.
func (r *resolver) qualify(prefix int, scopes []string, label string, line int) (string, error) {
	if prefix > len(r.scopes) {
		return "", newError(line, ErrNestingTooDeep)
	}
	path := make([]string, 0, prefix+len(scopes))
	path = append(path, r.scopes[:prefix]...)
	path = append(path, scopes...)
	return joinLabel(path, label), nil
}

func (r *resolver) definition(d *LabelDefinition, line int) error {
	name, err := r.qualify(d.PrefixCount, nil, d.Label, line)
	if err != nil {
		return err
	}
	d.Resolved = name
	return nil
}

func (r *resolver) access(a *LabelAccess, line int) error {
	name, err := r.qualify(a.PrefixCount, a.Scopes, a.Label, line)
	if err != nil {
		return err
	}
	a.Resolved = name
	return nil
}

func (r *resolver) external(e *LabelExternal) {
	e.Resolved = joinLabel(e.Scopes, e.Label)
}
