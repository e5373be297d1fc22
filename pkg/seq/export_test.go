package seq

var SetFastaRdSize = setFastaRdSize
