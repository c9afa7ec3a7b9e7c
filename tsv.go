package marktable

// TSV shares the CSV reader and writer with a tab delimiter, so tabs inside
// values are quoted instead of silently splitting a cell.

func tsvParser() Parser { return csvParser{comma: '\t'} }

func tsvFormatter() Formatter { return csvFormatter{comma: '\t'} }
