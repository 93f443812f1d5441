// Package xmlcodec compiles ews.Schema declarations into XML writer
// functions.
//
// Compilation happens once, when a Go type is registered against its
// schema, and is where every declaration problem surfaces: contradictory
// namespace annotations, attribute roles on positional members, enums
// mixing unit and structured variants, or a member whose Go type cannot
// satisfy its declared role. A registration either yields a fully resolved
// writer or fails with a *SchemaError naming the offending declaration;
// there is no partial or best-effort compilation.
//
// The compiled writers themselves perform no validation and no logging.
// The only errors they can produce come from the underlying output writer,
// and those propagate unchanged from the top-level Encode or Marshal call.
package xmlcodec
