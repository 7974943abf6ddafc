/*
Package migrate rewrites import prefixes across a source tree.

	+-------------+      +-------------+      +-------------+
	|  Enumerate  | ---> |   Process   | ---> |   Report    |
	|   (globs)   |      | (per file)  |      |  (console)  |
	+-------------+      +-------------+      +-------------+

🔄 Flow:
 1. Expand each manifest pattern, in order, into a sorted list of files
 2. Read a file, apply every rule in order
 3. Write it back only when the content changed
 4. Report "Updated imports in: <path>" or "Error processing file <path>: <err>"

⚡ Guarantees:
  - Files are processed one at a time, in enumeration order
  - A failure on one file is reported and the run moves on
  - Only an enumeration failure stops a run
  - Unchanged files are never written

🔍 Example:

	m, _ := rules.Default()
	fs, _ := fsys.NewOS(".")
	migrator, _ := migrate.New(migrate.Options{FS: fs, Manifest: m, Logger: logger})
	summary, err := migrator.Run(ctx)
*/
package migrate
