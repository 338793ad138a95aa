/*
Package pochi is the entry point to the helpers in this module.

	+---------------------------------------------------+
	|                      Pochi                        |
	+----------+-----------+----------+--------+--------+
	| Mkdir    | Workspace | Find     | Timer  | Load   |
	|          |           | Copy     |        | Config |
	|          |           | Move     |        |        |
	+----+-----+-----+-----+----+-----+---+----+---+----+
	     |           |          |         |        |
	DirectoryCreator |       FileOps      |     config
	          WorkspaceCreator        timer.Start

🎯 Purpose:
- One value to pass around in experiment scripts
- Every collaborator can be swapped through Options, e.g. with a mock in tests

🔍 Example:

	p := pochi.New(pochi.Options{})

	ws, err := p.Workspace(ctx, workspace.Options{BaseDir: "runs", Subdirs: []string{"models"}})
	if err != nil {
		return err
	}

	t := p.Timer("copy dataset")
	res, err := p.Copy(ctx, "data", ws.Root, "train/**")
	if err != nil {
		t.Fail()
		return err
	}
	t.Stop()
	if !res.OK() {
		return res.Err()
	}
*/
package pochi
