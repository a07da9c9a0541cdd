package diylisp

// Equals compares two values structurally. Closures are equal only to
// themselves.
func Equals(v1, v2 Expr) bool {
	list1, isList1 := v1.(List)
	list2, isList2 := v2.(List)
	if isList1 && isList2 {
		return sliceEquals(list1, list2)
	}

	return v1 == v2
}

func sliceEquals(slice1, slice2 []Expr) bool {
	if len(slice1) != len(slice2) {
		return false
	}
	for i := 0; i < len(slice1); i++ {
		if !Equals(slice1[i], slice2[i]) {
			return false
		}
	}
	return true
}
