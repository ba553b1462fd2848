/*
Package persistence saves a project as a directory tree and loads it back.

Layout of a project directory:

	proj.cip              JSON descriptor: fps, sample_rate, audio_files
	Walk.cipgfx           one YAML file per graphic, holding its whole subtree
	Skin.cippal           one YAML file per palette
	Scene/                one directory per folder
	sfx/boop.mp3          audio, referenced by path and content hash

Every asset file records the on-disk key of each object it holds. On load an
object keeps its key when that key is free in the store; otherwise a fresh
key is allocated and the file's child references are rewritten through a
per-file translation table.

Loading never aborts on a damaged file or field: problems are collected in
a LoadReport and the walk goes on. Saving likewise collects per-file
failures in a SaveReport.
*/
package persistence
