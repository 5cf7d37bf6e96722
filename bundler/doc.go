// Package bundler groups extracted operations into modules and computes
// each module's type set.
//
// Grouping keys operations by the module name inferred from their
// operationId. Type ownership is decided by [AssignOwner]: a type belongs
// to the module whose name it contains. The heuristic is knowingly
// ambiguous ("UserGroup" contains both "User" and "Group"), so it is a
// standalone function with its own tests.
//
// [Bundle] then works module by module:
//
//  1. owned types, in pool order
//  2. the sentinel error type
//  3. the request and response types of the module's operations
//  4. the transitive closure of references, imported from the pool
//
// Every type is a value copy, so renaming inside one module never leaks
// into another. Names missing from the pool are recorded in
// [model.ModuleDescriptor.Unresolved] and handed to a [DanglingResolver];
// nothing is ever added to the pool.
//
// Finally the module name is stripped from owned type names ("StoreOrder"
// becomes "Order" in module Store) and every reference is rewritten.
package bundler
