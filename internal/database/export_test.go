package database

func TxKeyForTest() any { return txKey{} }
