/*
Package condition compiles declarative condition trees into SQL WHERE
fragments.

A tree is built from three node kinds:

	condition.Eq("field", "value")                 // field = "value"
	condition.Or(condition.Eq("f", "1"), condition.Eq("f", "2"))
	                                               // (f = "1" or f = "2")
	condition.True()                               // 1 = 1

Groups nest to any depth and are always parenthesized; the operator text is
emitted in the case it was given, so Group{Operator: "AND", ...} renders with
" AND ".

Literal rendering (Build) inlines values: integers bare, nil as NULL and
everything else double-quoted without escaping. Equality is the only
comparison. Both are long-standing properties of the rendered SQL and are
kept as-is; use BuildArgs to get placeholders plus an argument list instead:

	where, args, err := condition.BuildArgs(tree, condition.PlaceholderQuestion)
	// where => (name = ? or name = ?)

Dynamic trees decoded from JSON or YAML can be converted with Parse:

	c, err := condition.Parse(map[string]any{
	    "and": []any{
	        map[string]any{"status": "active"},
	        map[string]any{"or": []any{
	            map[string]any{"role": "admin"},
	            map[string]any{"role": "owner"},
	        }},
	    },
	})
*/
package condition
