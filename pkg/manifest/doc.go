// Package manifest loads named route matchers from JSON or YAML documents
// and compiles them into a lookup table.
//
// A manifest lists routes by name:
//
//	routes:
//	  - name: user
//	    matcher: /users/{id}!
//	    mode: named
//	  - name: files
//	    matcher: /files/{*:path}
//
// Manifests are read from a local file (FileSource) or an S3 object
// (S3Source). Compile checks every entry and reports all rejected matchers
// at once in a *CompileError.
package manifest
