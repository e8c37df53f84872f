// Package domain defines the core business entities of the task board:
// users, tasks, and the derived per-user task summaries, together with
// the validation rules that keep them consistent.
package domain
