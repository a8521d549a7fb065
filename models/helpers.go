package models

// contains reports whether a username is part of a list (friends, voters, views)
func contains(list []string, name string) bool {
	for _, v := range list {
		if v == name {
			return true
		}
	}
	return false
}

// remove strips a username from a list, preserving the order of the rest
func remove(list []string, name string) []string {
	res := make([]string, 0, len(list))
	for _, v := range list {
		if v != name {
			res = append(res, v)
		}
	}
	return res
}
