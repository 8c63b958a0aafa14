// Package planner checks an incoming atom against the loaded environment
// mappings before it is assigned to a profile.
//
// An atom may belong to at most one mapping. The mappings themselves do not
// enforce this; callers run a ConflictChecker before every insertion.
package planner
