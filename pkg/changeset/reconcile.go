package changeset

// Report lists the paths reconciliation added and dropped, in path order.
type Report struct {
	Added   []string
	Removed []string
}

// Empty reports whether reconciliation changed nothing.
func (r Report) Empty() bool {
	return len(r.Added) == 0 && len(r.Removed) == 0
}

// Reconcile merges cs against a fresh scan of the tree. Paths only in the
// tree are added as Ignore(path); paths only in cs are dropped along with
// whatever action was pending for them; paths in both keep their action
// under the tree's spelling. cs is consumed.
func Reconcile(cs *ChangeSet, tree []string) (*ChangeSet, Report) {
	tree = NormalizeTree(tree)
	keys := cs.Keys()
	ws, mapping := cs.Split()

	var report Report
	result := make(map[string]Action, len(tree))

	i, j := 0, 0
	for i < len(tree) || j < len(keys) {
		var c int
		switch {
		case i == len(tree):
			c = 1
		case j == len(keys):
			c = -1
		default:
			c = ComparePaths(tree[i], keys[j])
		}

		switch {
		case c < 0:
			result[tree[i]] = Ignore(tree[i])
			report.Added = append(report.Added, tree[i])
			i++
		case c > 0:
			report.Removed = append(report.Removed, keys[j])
			j++
		default:
			result[tree[i]] = mapping[keys[j]]
			i++
			j++
		}
	}

	return New(ws, result), report
}
