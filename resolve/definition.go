package resolve

import (
	"fmt"

	"tarn/logging"
	"tarn/sem"
	"tarn/syntax"
)

// Declare extracts the declarations of a parsed file into its module: every
// declared name is bound in the module's symbol table and every declaration
// captures the scope it will resolve in.  No declaration is resolved.  It
// returns false if a name was declared twice.
func Declare(m *sem.Module, file *syntax.File) bool {
	m.AST = file
	ok := true

	for _, decl := range file.Decls {
		attrs := decl.Attrs()
		sc := m.RootScope.WithAttrs(visibilityOf(attrs, sem.VisPublic), storageClassOf(attrs))

		switch v := decl.(type) {
		case *syntax.ImportDecl:
			// imports are private unless marked otherwise
			sc.Visibility = visibilityOf(attrs, sem.VisPrivate)
			ok = declareImport(m, v, sc) && ok
		case *syntax.EnumDecl:
			ok = declareEnum(m, v, sc) && ok
		default:
			logging.LogFatal(fmt.Sprintf("unknown declaration of type %T", decl))
		}
	}

	return ok
}

// declareImport creates an import and binds its selective aliases
func declareImport(m *sem.Module, id *syntax.ImportDecl, sc *sem.Scope) bool {
	imp := sem.NewImport(id.Packages, id.Module, id.Pos, m.Ctx, m)
	imp.PathPos = id.PathPos
	imp.Alias = id.Alias
	imp.Static = id.Attributes.Static
	imp.Visibility = sc.Visibility
	imp.Scope = sc
	m.AddDecl(imp)

	ok := true
	for _, bind := range id.Binds {
		alias := bind.Alias
		if alias == "" {
			alias = bind.Name
		}

		ad := imp.AddBind(bind.Name, alias, bind.Pos)
		ad.Scope = sc
		ok = declareName(m, m.Table, ad) && ok
	}

	return ok
}

// declareEnum creates an enum and its members
func declareEnum(m *sem.Module, ed *syntax.EnumDecl, sc *sem.Scope) bool {
	sed := sem.NewEnumDecl(ed.Name, ed.Pos, m.Ctx, m)
	sed.BaseTypeExpr = ed.BaseType
	sed.Visibility = sc.Visibility
	sed.Deprecated = sc.Stc&sem.StcDeprecated != 0
	sed.Scope = sc
	m.AddDecl(sed)

	ok := true
	if ed.HasBody {
		sed.Members = []*sem.EnumMember{}
	}

	// the members of an anonymous enum belong to the enclosing table
	table := sed.Table
	if sed.Anonymous() {
		table = m.Table
	}

	for _, member := range ed.Members {
		em := sem.NewEnumMember(member.Name, member.Pos, m.Ctx)
		em.TypeExpr = member.Type
		em.Init = member.Init
		em.Visibility = sed.Visibility
		sed.AddMember(em)

		ok = declareName(m, table, em) && ok
	}

	if !sed.Anonymous() {
		ok = declareName(m, m.Table, sed) && ok
	}

	// an enum with a colliding name or member never resolves
	if !ok {
		sed.Poison(sem.ErrPoisoned)
		sed.PoisonMembers()
	}

	return ok
}

// declareName binds a declaration in a symbol table reporting collisions.  The
// colliding declaration is poisoned (along with its members).
func declareName(m *sem.Module, table *sem.SymbolTable, d sem.Decl) bool {
	prev, ok := table.Insert(d.Name(), d)
	if ok {
		return true
	}

	msg := fmt.Sprintf("%s `%s` is already declared", sem.KindName(d), d.Name())
	if pos := prev.Position(); pos != nil {
		msg += fmt.Sprintf(" at %s", pos)
	}

	logging.LogCompileError(m.Ctx, msg, logging.LMKName, d.Position())
	if ed, isEnum := d.(*sem.EnumDecl); isEnum {
		ed.Poison(sem.ErrNameCollision)
		ed.PoisonMembers()
	} else {
		d.Base().Poison(sem.ErrNameCollision)
	}

	return false
}

// visibilityOf converts the visibility attribute of a declaration
func visibilityOf(attrs syntax.Attributes, def sem.Visibility) sem.Visibility {
	switch attrs.Visibility {
	case syntax.PUBLIC:
		return sem.VisPublic
	case syntax.PRIVATE:
		return sem.VisPrivate
	case syntax.PACKAGE:
		return sem.VisPackage
	}

	return def
}

// storageClassOf converts the storage class attributes of a declaration
func storageClassOf(attrs syntax.Attributes) sem.StorageClass {
	var stc sem.StorageClass
	if attrs.Static {
		stc |= sem.StcStatic
	}

	if attrs.Deprecated {
		stc |= sem.StcDeprecated
	}

	return stc
}
