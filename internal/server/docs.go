package server

import (
	"strings"

	"github.com/duskkv/duskkv/internal/resp"
)

// commandMetadata mirrors the shape COMMAND/COMMAND INFO expose for a
// command: arity (positive = exact argument count including the name
// itself, negative = minimum), flags, and the 1-based key-position
// triple (0,0,0 for keyless commands).
type commandMetadata struct {
	arity    int
	flags    []string
	firstKey int
	lastKey  int
	step     int
}

var commandRegistry = map[string]commandMetadata{
	"PING":    {-1, []string{"fast", "stale"}, 0, 0, 0},
	"QUIT":    {1, []string{"fast"}, 0, 0, 0},
	"COMMAND": {-1, []string{"random", "loading", "stale"}, 0, 0, 0},

	"GET":     {2, []string{"readonly", "fast"}, 1, 1, 1},
	"SET":     {-3, []string{"write", "denyoom"}, 1, 1, 1},
	"MSET":    {-3, []string{"write", "denyoom"}, 1, -1, 2},
	"MGET":    {-2, []string{"readonly", "fast"}, 1, -1, 1},
	"INCR":    {2, []string{"write", "denyoom", "fast"}, 1, 1, 1},
	"DECR":    {2, []string{"write", "denyoom", "fast"}, 1, 1, 1},
	"INCRBY":  {3, []string{"write", "denyoom", "fast"}, 1, 1, 1},
	"DECRBY":  {3, []string{"write", "denyoom", "fast"}, 1, 1, 1},

	"DEL":    {-2, []string{"write"}, 1, -1, 1},
	"EXISTS": {-2, []string{"readonly", "fast"}, 1, -1, 1},
	"EXPIRE": {3, []string{"write", "fast"}, 1, 1, 1},
	"TTL":    {2, []string{"readonly", "fast"}, 1, 1, 1},
	"KEYS":   {2, []string{"readonly"}, 0, 0, 0},

	"LPUSH":  {-3, []string{"write", "denyoom", "fast"}, 1, 1, 1},
	"RPUSH":  {-3, []string{"write", "denyoom", "fast"}, 1, 1, 1},
	"LLEN":   {2, []string{"readonly", "fast"}, 1, 1, 1},
	"LRANGE": {4, []string{"readonly"}, 1, 1, 1},

	"HSET":    {4, []string{"write", "denyoom", "fast"}, 1, 1, 1},
	"HGET":    {3, []string{"readonly", "fast"}, 1, 1, 1},
	"HDEL":    {-3, []string{"write", "fast"}, 1, 1, 1},
	"HEXISTS": {3, []string{"readonly", "fast"}, 1, 1, 1},
	"HGETALL": {2, []string{"readonly"}, 1, 1, 1},
	"HKEYS":   {2, []string{"readonly"}, 1, 1, 1},
	"HVALS":   {2, []string{"readonly"}, 1, 1, 1},
	"HLEN":    {2, []string{"readonly", "fast"}, 1, 1, 1},

	"SADD":      {-3, []string{"write", "denyoom", "fast"}, 1, 1, 1},
	"SMEMBERS":  {2, []string{"readonly"}, 1, 1, 1},
	"SISMEMBER": {3, []string{"readonly", "fast"}, 1, 1, 1},
	"SREM":      {-3, []string{"write", "fast"}, 1, 1, 1},
	"SCARD":     {2, []string{"readonly", "fast"}, 1, 1, 1},
	"SINTER":    {-2, []string{"readonly"}, 1, -1, 1},
	"SUNION":    {-2, []string{"readonly"}, 1, -1, 1},

	"ZADD":   {-4, []string{"write", "denyoom", "fast"}, 1, 1, 1},
	"ZRANGE": {-4, []string{"readonly"}, 1, 1, 1},
	"ZRANK":  {3, []string{"readonly", "fast"}, 1, 1, 1},
	"ZREM":   {-3, []string{"write", "fast"}, 1, 1, 1},
	"ZSCORE": {3, []string{"readonly", "fast"}, 1, 1, 1},
	"ZCARD":  {2, []string{"readonly", "fast"}, 1, 1, 1},
}

// commandDoc is the human-facing documentation for a command, returned
// by COMMAND DOCS.
type commandDoc struct {
	summary    string
	complexity string
	group      string
	since      string
}

var commandDocsRegistry = map[string]commandDoc{
	"PING":    {"Ping the server.", "O(1)", "connection", "1.0.0"},
	"QUIT":    {"Close the connection.", "O(1)", "connection", "1.0.0"},
	"COMMAND": {"Get array of command details.", "O(N)", "server", "1.0.0"},

	"GET":    {"Get the value of a key.", "O(1)", "string", "1.0.0"},
	"SET":    {"Set the string value of a key, with optional expiry and existence options.", "O(1)", "string", "1.0.0"},
	"MSET":   {"Set multiple keys to multiple values.", "O(N)", "string", "1.0.0"},
	"MGET":   {"Get the values of multiple keys.", "O(N)", "string", "1.0.0"},
	"INCR":   {"Increment the integer value of a key by one.", "O(1)", "string", "1.0.0"},
	"DECR":   {"Decrement the integer value of a key by one.", "O(1)", "string", "1.0.0"},
	"INCRBY": {"Increment the integer value of a key by the given amount.", "O(1)", "string", "1.0.0"},
	"DECRBY": {"Decrement the integer value of a key by the given amount.", "O(1)", "string", "1.0.0"},

	"DEL":    {"Delete one or more keys.", "O(N)", "generic", "1.0.0"},
	"EXISTS": {"Determine how many of the given keys exist.", "O(N)", "generic", "1.0.0"},
	"EXPIRE": {"Set a key's time to live in seconds.", "O(1)", "generic", "1.0.0"},
	"TTL":    {"Get the time to live for a key in seconds.", "O(1)", "generic", "1.0.0"},
	"KEYS":   {"Find all keys matching a glob pattern.", "O(N)", "generic", "1.0.0"},

	"LPUSH":  {"Prepend one or more values to a list.", "O(N)", "list", "1.0.0"},
	"RPUSH":  {"Append one or more values to a list.", "O(N)", "list", "1.0.0"},
	"LLEN":   {"Get the length of a list.", "O(1)", "list", "1.0.0"},
	"LRANGE": {"Get a range of elements from a list.", "O(N)", "list", "1.0.0"},

	"HSET":    {"Set the value of a hash field.", "O(1)", "hash", "1.0.0"},
	"HGET":    {"Get the value of a hash field.", "O(1)", "hash", "1.0.0"},
	"HDEL":    {"Delete one or more hash fields.", "O(N)", "hash", "1.0.0"},
	"HEXISTS": {"Determine if a hash field exists.", "O(1)", "hash", "1.0.0"},
	"HGETALL": {"Get all fields and values of a hash.", "O(N)", "hash", "1.0.0"},
	"HKEYS":   {"Get all fields of a hash.", "O(N)", "hash", "1.0.0"},
	"HVALS":   {"Get all values of a hash.", "O(N)", "hash", "1.0.0"},
	"HLEN":    {"Get the number of fields in a hash.", "O(1)", "hash", "1.0.0"},

	"SADD":      {"Add one or more members to a set.", "O(N)", "set", "1.0.0"},
	"SMEMBERS":  {"Get all members of a set.", "O(N)", "set", "1.0.0"},
	"SISMEMBER": {"Determine if a value is a member of a set.", "O(1)", "set", "1.0.0"},
	"SREM":      {"Remove one or more members from a set.", "O(N)", "set", "1.0.0"},
	"SCARD":     {"Get the number of members in a set.", "O(1)", "set", "1.0.0"},
	"SINTER":    {"Intersect multiple sets.", "O(N*M)", "set", "1.0.0"},
	"SUNION":    {"Union multiple sets.", "O(N)", "set", "1.0.0"},

	"ZADD":   {"Add one or more members to a sorted set, or update its score.", "O(log N)", "sorted-set", "1.0.0"},
	"ZRANGE": {"Return a range of members in a sorted set, by rank.", "O(log N + M)", "sorted-set", "1.0.0"},
	"ZRANK":  {"Determine the rank of a member in a sorted set.", "O(log N)", "sorted-set", "1.0.0"},
	"ZREM":   {"Remove one or more members from a sorted set.", "O(log N)", "sorted-set", "1.0.0"},
	"ZSCORE": {"Get the score of a member in a sorted set.", "O(1)", "sorted-set", "1.0.0"},
	"ZCARD":  {"Get the number of members in a sorted set.", "O(1)", "sorted-set", "1.0.0"},
}

func makeFlagsArray(flags []string) resp.Value {
	vals := make([]resp.Value, len(flags))
	for i, f := range flags {
		vals[i] = resp.MakeSimpleString(f)
	}
	return resp.MakeArray(vals)
}

func makeInfoCmdArray(name string) resp.Value {
	meta := commandRegistry[name]
	return resp.MakeArray([]resp.Value{
		resp.MakeBulkStringFromString(strings.ToLower(name)),
		resp.MakeInteger(int64(meta.arity)),
		makeFlagsArray(meta.flags),
		resp.MakeInteger(int64(meta.firstKey)),
		resp.MakeInteger(int64(meta.lastKey)),
		resp.MakeInteger(int64(meta.step)),
	})
}

// getAllCommands implements bare COMMAND: one info array per registered
// command.
func getAllCommands() resp.Value {
	out := make([]resp.Value, 0, len(commandRegistry))
	for name := range commandRegistry {
		out = append(out, makeInfoCmdArray(name))
	}
	return resp.MakeArray(out)
}

// getCommandsDocs implements COMMAND DOCS [name ...]: with no names,
// documents every known command; otherwise only the ones requested and
// recognized. Format: [name, [summary, v, since, v, group, v,
// complexity, v], name, [...], ...].
func getCommandsDocs(names []resp.Value) resp.Value {
	var targets []string
	if len(names) == 0 {
		targets = make([]string, 0, len(commandDocsRegistry))
		for name := range commandDocsRegistry {
			targets = append(targets, name)
		}
	} else {
		for _, n := range names {
			targets = append(targets, strings.ToUpper(string(n.Bytes())))
		}
	}

	out := make([]resp.Value, 0, len(targets)*2)
	for _, name := range targets {
		doc, ok := commandDocsRegistry[name]
		if !ok {
			continue
		}
		out = append(out, resp.MakeBulkStringFromString(strings.ToLower(name)))
		out = append(out, resp.MakeArray([]resp.Value{
			resp.MakeBulkStringFromString("summary"),
			resp.MakeBulkStringFromString(doc.summary),
			resp.MakeBulkStringFromString("since"),
			resp.MakeBulkStringFromString(doc.since),
			resp.MakeBulkStringFromString("group"),
			resp.MakeBulkStringFromString(doc.group),
			resp.MakeBulkStringFromString("complexity"),
			resp.MakeBulkStringFromString(doc.complexity),
		}))
	}
	return resp.MakeArray(out)
}
