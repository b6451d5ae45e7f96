package goedm

// Package goedm provides:
//
// - An in-memory EDM model built from declaration records (Builder, Model)
// - Lazy, cycle-safe resolution of references between schema elements
// - Ambiguous bindings for colliding names and Bad elements for broken declarations
// - Type-name resolution with Collection(...) syntax and version gating
// - A stable error model via ValidationError/Errors (code, location, message)
//
// Design policy:
// - Keep only public APIs in the root package; put detailed implementations under internal/.
// - Place loaders under csdl/ and the CLI under cmd/edmcheck.
// - Every accessor is total: a broken declaration yields a Bad element, never a panic.
//
// Typical usage:
//
//  doc, err := csdl.Load("service.json")
//  m, err := goedm.BuildModel(goedm.NewCoreModel(), doc)
//  t, kind, err := goedm.ResolveTypeName(m, nil, "Collection(NS.Customer)", nil, m.Version())
//  errs := goedm.Validate(m.Seal())
//
