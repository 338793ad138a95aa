/*
Package fileops finds files by glob pattern and copies or moves them to
another root while keeping their path relative to the source root.

	+-------------+        +-------------+        +-------------+
	|    Find     | -----> |  re-base    | -----> | copy (+rm)  |
	| (WalkDir +  |        | Rel(src) -> |        | temp+rename |
	| doublestar) |        | Join(dst)   |        |             |
	+-------------+        +-------------+        +-------------+

🎯 Purpose:
- Select files below a root with doublestar patterns
- Reproduce the relative layout below a destination root
- Report per-file failures without aborting the batch

🔄 Flow:
1. Validate the pattern (ErrInvalidPattern) and the source root (ErrNotFound)
2. Walk the source root lexically and match relative slash paths
3. Create the destination root
4. For each file: create parents, copy to a temp sibling, rename into place
5. Move only: remove the source once the copy is in place

⚡ Failure model:
- Structural problems abort the call and are returned as errors
- Per-file problems land in TransferResult.Errors as *TransferError
- A move whose source cannot be removed is reported with StageRemove, the
  destination copy is complete in that case

🔍 Example:

	ops := fileops.New(fileops.WithLogger(logger))
	res, err := ops.Copy(ctx, "data/", "backup/", "train/**")
	if err != nil {
		return err
	}
	if !res.OK() {
		return res.Err()
	}
*/
package fileops
