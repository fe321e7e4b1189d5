// Package fuzztests houses Go fuzz harnesses that exercise the analysis
// pipeline (source -> tokenizer -> call extraction -> checker) on arbitrary
// byte inputs. The goal is robustness: no panics, no invariant violations,
// and deterministic findings, whatever bytes a file contains.
package fuzztests
