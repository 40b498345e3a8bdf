// Package planner turns natural-language queries into tool plans and runs them.
//
// Planning is delegated to a provider.Completer: the planner only builds the
// prompt and decodes the JSON plan it returns. Running a plan walks its steps
// in order against a tools.Registry, threading earlier outputs into later
// arguments through $name references.
//
// Plans and runs are kept in a Store. The default MemoryStore lives for the
// lifetime of the process.
package planner
