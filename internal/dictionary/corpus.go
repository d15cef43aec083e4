package dictionary

import _ "embed"

//go:embed testdata/corpus.txt
var embeddedCorpus string
