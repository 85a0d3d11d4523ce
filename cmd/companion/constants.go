package main

// DefaultListLimit is the default number of notes shown by list commands.
const DefaultListLimit = 20
