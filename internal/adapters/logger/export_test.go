package logger

// CollectMessages exposes collectMessages for tests.
var CollectMessages = collectMessages
