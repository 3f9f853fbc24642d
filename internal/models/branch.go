package models

// DefaultBranches seeds an empty branch list with the distributor's three
// delivery routes.
var DefaultBranches = []string{"ڕێی مەسیف", "ڕێی بەحرکە", "ڕێی بنەسڵاوە"}
