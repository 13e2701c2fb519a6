/*
Package log provides the leveled logging used throughout ddnshook. Levels are
cumulative: Minor implies Major and Debug implies Minor. Major is intended for
infrequent operational events such as startup, zone configuration and commit failures;
Minor covers per-event details and Debug covers DNS exchanges.

The package is deliberately tiny. All output goes to a single settable io.Writer which
tests replace to capture output.
*/
package log
