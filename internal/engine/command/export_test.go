// export_test.go exports private functions for white-box testing.
package command

var (
	Parse         = parse
	SplitSegments = splitSegments
	UsesFile      = usesFile
)
