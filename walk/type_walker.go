package walk

import (
	"fmt"
	"strings"

	"tarn/ctfe"
	"tarn/logging"
	"tarn/sem"
	"tarn/syntax"
	"tarn/typing"
)

// ResolveType implements sem.Evaluator.  Named types must name an enum: the
// enum is not resolved, callers decide how much of it they need.
func (w *Walker) ResolveType(texpr syntax.TypeExpr, sc *sem.Scope) (typing.DataType, sem.ErrorKind) {
	switch v := texpr.(type) {
	case *syntax.BuiltinType:
		return builtinType(v), sem.ErrNone
	case *syntax.NamedType:
		return w.walkNamedType(v, sc)
	}

	logging.LogFatal(fmt.Sprintf("unknown type label %T", texpr))
	return nil, sem.ErrEvaluation
}

// builtinType converts a type keyword to its primitive type.  The primitive
// kinds are enumerated in the same order as the type keywords so we can just
// subtract the first keyword.
func builtinType(bt *syntax.BuiltinType) typing.PrimType {
	return typing.PrimType(bt.Kind - syntax.BOOL)
}

// walkNamedType looks up a dotted type name
func (w *Walker) walkNamedType(nt *syntax.NamedType, sc *sem.Scope) (typing.DataType, sem.ErrorKind) {
	d, ok := sc.Lookup(nt.Names[0])
	if !ok {
		w.logError(sc, fmt.Sprintf("undefined type `%s`", nt), logging.LMKName, nt.Pos)
		return nil, sem.ErrUndefined
	}

	for i := 0; ; i++ {
		// aliases stand for their target
		if ad, ok := d.(*sem.AliasDecl); ok {
			if kind := w.res.Require(ad); kind != sem.ErrNone {
				return nil, kind
			}

			d = ad.Target
			continue
		}

		if i == len(nt.Names)-1 {
			break
		}

		name := nt.Names[i+1]
		switch v := d.(type) {
		case *sem.Package:
			d, ok = v.Search(name)
		case *sem.Module:
			d, ok = v.SearchPublic(name, sc.Module)
		default:
			ok = false
		}

		if !ok {
			w.logError(
				sc,
				fmt.Sprintf("undefined type `%s`", strings.Join(nt.Names[:i+2], ".")),
				logging.LMKName,
				nt.Pos,
			)
			return nil, sem.ErrUndefined
		}
	}

	if ed, ok := d.(*sem.EnumDecl); ok && !ed.Anonymous() {
		return ed.Type, sem.ErrNone
	}

	w.logError(sc, fmt.Sprintf("`%s` is not a type", nt), logging.LMKTyping, nt.Pos)
	return nil, sem.ErrTypeMismatch
}

// -----------------------------------------------------------------------------

// walkTypeProperty computes a property (`.max`, `.min` or `.init`) of a type
func (w *Walker) walkTypeProperty(dt typing.DataType, name string, sc *sem.Scope, pos *logging.TextPosition) sem.Value {
	if et, ok := dt.(*typing.EnumType); ok {
		ed := et.Info.(*sem.EnumDecl)

		switch name {
		case "max", "min":
			return w.res.Extremum(ed, name == "max", sc, pos)
		case "init":
			return w.res.Default(ed, sc, pos)
		}
	} else if pt, ok := dt.(typing.PrimType); ok {
		var (
			c     *ctfe.Const
			found bool
		)

		switch name {
		case "max":
			c, found = ctfe.MaxOf(pt)
		case "min":
			c, found = ctfe.MinOf(pt)
		case "init":
			c, found = ctfe.InitOf(pt)
		}

		if found {
			return sem.Ok(c)
		}
	}

	w.logError(
		sc,
		fmt.Sprintf("no property `%s` for type `%s`", name, typing.Repr(dt)),
		logging.LMKProp,
		pos,
	)
	return sem.Fail(sem.ErrUndefined)
}
