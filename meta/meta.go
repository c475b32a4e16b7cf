// meta/meta.go
package meta

// MOVE_FILE is the file the referee reads this round's move from.
const MOVE_FILE = "move.txt"

// NOTES_FILE carries the opponent model from one round to the next.
const NOTES_FILE = "notes.txt"

// PREDICTION_FILE holds the board as this agent left it last round.
const PREDICTION_FILE = "prediction.txt"

// SNAPSHOT_EXT is appended to the round number to name the snapshot file.
const SNAPSHOT_EXT = ".txt"

// RATIO_COUNT is the number of basic strategies mixed by the learned ratios.
const RATIO_COUNT = 5
