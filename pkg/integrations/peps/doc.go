// Package peps tallies PEP statuses from the PEP index.
//
// [Client.StatusTally] walks the numerical index, opens every PEP page and
// counts the value of its "Status:" field. Pages that fail to load or lack
// the field are logged and skipped.
package peps
