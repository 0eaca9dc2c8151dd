// Package domain defines the core business entities of the task tracker:
// users and the tasks they own. Entities validate themselves; persistence
// and authentication concerns live in other packages.
package domain
