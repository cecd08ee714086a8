// Package project resolves the treasury contracts' build configuration: the
// Solidity compiler version and the connection settings of every supported
// network. Resolution is a pure function of an env.Source and never fails;
// missing variables degrade to empty values.
package project
