package stats

import (
	"bytes"
	"fmt"
	"testing"
)

/*
Utilities for validating the stats registry contents
*/

// RuleChecker compares a rendered stat value (got) against an expected value.
type RuleChecker struct {
	name    string
	checker func(got, expected interface{}) bool
}

func nilCheck(a, b interface{}) (nilFound, eqValues bool) {
	if a == nil && b == nil {
		return true, true
	} else if a == nil || b == nil {
		return true, false
	}
	return false, false
}

/*
returns true if a (int64) == b (int)
*/
func int64EqTest(a, b interface{}) bool {
	if nilFound, eqValue := nilCheck(a, b); nilFound {
		return eqValue
	}
	aint, ok := a.(int64)
	if !ok {
		return false
	}
	return aint == int64(b.(int))
}

var Int64EqTest = RuleChecker{name: "Int64EqTest", checker: int64EqTest}

/*
returns true if a (int64) > b (int)
*/
func int64GTTest(a, b interface{}) bool {
	if nilFound, eqValue := nilCheck(a, b); nilFound {
		return eqValue
	}
	aint, ok := a.(int64)
	if !ok {
		return false
	}
	return aint > int64(b.(int))
}

var Int64GTTest = RuleChecker{name: "Int64GTTest", checker: int64GTTest}

func doesNotExistTest(a, b interface{}) bool {
	return a == nil
}

var DoesNotExistTest = RuleChecker{name: "DoesNotExistTest", checker: doesNotExistTest}

// Rule pairs a checker with the expected value passed to it.
type Rule struct {
	Checker RuleChecker
	Value   interface{}
}

/*
VerifyStats checks that every key in contains satisfies its rule against the
receiver's registry. Reports all violations at once and dumps the registry.
*/
func VerifyStats(tag string, stat StatsReceiver, t *testing.T, contains map[string]Rule) {
	reg, ok := stat.Registry().(*finagleStatsRegistry)
	if !ok {
		t.Errorf("%s: stats receiver is not backed by a finagle registry", tag)
		return
	}

	failed := false
	var msg bytes.Buffer
	msg.WriteString(tag)
	msg.WriteString(": stats registry error:\n")

	asJson := reg.MarshalAll()
	for key, rule := range contains {
		gotValue := asJson[key]
		if rule.Checker.checker(gotValue, rule.Value) {
			continue
		}
		failed = true
		if rule.Checker.name == DoesNotExistTest.name {
			msg.WriteString(fmt.Sprintf("%s: found stat entry when there should not be one\n", key))
		} else {
			msg.WriteString(fmt.Sprintf("%s: got %v, expected to pass %s with %v\n", key, gotValue, rule.Checker.name, rule.Value))
		}
	}
	if failed {
		pretty, _ := reg.MarshalJSONPretty()
		t.Errorf("%s%s", msg.String(), pretty)
	}
}
