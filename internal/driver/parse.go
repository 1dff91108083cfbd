package driver

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"chearmyp/internal/diag"
	"chearmyp/internal/lexer"
	"chearmyp/internal/node"
	"chearmyp/internal/parser"
	"chearmyp/internal/project"
	"chearmyp/internal/source"
	"chearmyp/internal/token"
	"chearmyp/internal/trace"
)

// ParseResult holds one parsed document. Exactly one of Borrowed and Owned
// is set unless the file failed to load.
type ParseResult struct {
	Path     string
	FileSet  *source.FileSet
	File     *source.File // nil when loading failed
	Borrowed []node.Node[node.Borrowed]
	Owned    []node.Node[node.Owned]
	Bag      *diag.Bag
	Cached   bool
}

// Roots is the number of top-level nodes.
func (r *ParseResult) Roots() int {
	if r.Owned != nil {
		return len(r.Owned)
	}
	return len(r.Borrowed)
}

// Records converts the forest, whichever representation it has.
func (r *ParseResult) Records() []node.Record {
	if r.Owned != nil {
		return node.ToRecords(r.Owned)
	}
	return node.ToRecords(r.Borrowed)
}

// Dump renders the forest in the indented debug form.
func (r *ParseResult) Dump() string {
	if r.Owned != nil {
		return node.Dump(r.Owned)
	}
	return node.Dump(r.Borrowed)
}

// Parse loads and parses one file.
func Parse(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	fs := source.NewFileSet()

	loadStart := time.Now()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	if opts.Timer != nil {
		opts.Timer.Add("load", time.Since(loadStart))
	}
	return parseLoaded(ctx, fs, fs.Get(fileID), opts), nil
}

// ParseSource parses an in-memory document registered under name.
func ParseSource(ctx context.Context, name string, src []byte, opts Options) *ParseResult {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, src)
	return parseLoaded(ctx, fs, fs.Get(fileID), opts)
}

func parseLoaded(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) *ParseResult {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeFile, "parse_file", trace.CurrentSpan(ctx).SpanID).
		WithExtra("path", file.Path)

	res := &ParseResult{
		Path:    file.Path,
		FileSet: fs,
		File:    file,
		Bag:     diag.NewBag(opts.MaxDiagnostics),
	}
	opts.Progress.emit(ProgressEvent{File: file.Path, Stage: StageParse, Status: StatusWorking})

	var cacheProblems []*diag.Diagnostic
	key := cacheKey(file, opts)
	if opts.Cache != nil {
		hit, problem := loadCached(opts.Cache, key, res)
		if hit {
			span.WithExtra("cache", "hit").End(strconv.Itoa(res.Roots()))
			opts.Progress.emit(ProgressEvent{
				File: file.Path, Stage: StageCache, Status: StatusDone,
				Roots: res.Roots(), Diags: res.Bag.Len(),
			})
			return res
		}
		if problem != nil {
			cacheProblems = append(cacheProblems, problem)
		}
	}

	passSpan := trace.Begin(tracer, trace.ScopePass, "lex_parse", span.ID())
	started := time.Now()
	// лексер и парсер пишут в один bag; повторы отбрасываем
	reporter := diag.NewDedupReporter((&lexer.ReporterAdapter{Bag: res.Bag}).Reporter())
	var stream lexer.Stream = lexer.New(file, lexer.Options{Reporter: reporter})
	if tracer.Level().ShouldEmit(trace.ScopeToken) {
		stream = &tracedStream{next: stream, tracer: tracer, parent: passSpan.ID()}
	}
	if opts.owned() {
		res.Owned = parser.Parse(stream, parser.Options[node.Owned]{
			Reporter: reporter,
			Convert:  parser.Own(opts.Normalize),
		})
	} else {
		res.Borrowed = parser.Parse(stream, parser.Options[node.Borrowed]{
			Reporter: reporter,
			Convert:  parser.Borrow,
		})
	}
	if opts.Timer != nil {
		opts.Timer.Add("parse", time.Since(started))
	}
	passSpan.End("")

	if opts.Cache != nil {
		payload := &DiskPayload{
			Path:   file.Path,
			Forest: res.Records(),
			Diags:  diagsToDisk(res.Bag.Items()),
		}
		if err := opts.Cache.Put(key, payload); err != nil {
			cacheProblems = append(cacheProblems, cacheDiagnostic(file, "cannot store parse cache: "+err.Error()))
		}
	}
	for _, d := range cacheProblems {
		res.Bag.Add(d)
	}

	span.WithExtra("cache", cacheState(opts.Cache)).End(strconv.Itoa(res.Roots()))
	opts.Progress.emit(ProgressEvent{
		File: file.Path, Stage: StageParse, Status: StatusDone,
		Roots: res.Roots(), Diags: res.Bag.Len(),
	})
	return res
}

// loadCached fills res from the cache. A broken entry is reported and
// treated as a miss.
func loadCached(cache *DiskCache, key project.Digest, res *ParseResult) (bool, *diag.Diagnostic) {
	var payload DiskPayload
	hit, err := cache.Get(key, &payload)
	if err != nil {
		return false, cacheDiagnostic(res.File, "cannot read parse cache: "+err.Error())
	}
	if !hit {
		return false, nil
	}
	forest, err := node.FromRecords(res.File.ID, payload.Forest)
	if err != nil {
		return false, cacheDiagnostic(res.File, "corrupt parse cache entry: "+err.Error())
	}
	res.Owned = forest
	res.Cached = true
	diagsFromDisk(res.File.ID, payload.Diags, res.Bag)
	return true, nil
}

// tracedStream emits one point per token handed to the scope stack.
type tracedStream struct {
	next   lexer.Stream
	tracer trace.Tracer
	parent uint64
}

func (s *tracedStream) Next() token.Token {
	tok := s.next.Next()
	trace.Point(s.tracer, trace.ScopeToken, tok.Kind.String(),
		fmt.Sprintf("depth=%d span=%s", tok.Depth, tok.Span), s.parent)
	return tok
}

func cacheDiagnostic(file *source.File, msg string) *diag.Diagnostic {
	return &diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     diag.IOCacheError,
		Message:  msg,
		Primary:  source.Span{File: file.ID},
	}
}

func cacheState(c *DiskCache) string {
	if c == nil {
		return "off"
	}
	return "miss"
}

// cacheKey binds the content hash to every option that changes the result.
func cacheKey(file *source.File, opts Options) project.Digest {
	return project.Combine(project.Digest(file.Hash),
		"schema="+strconv.Itoa(int(diskCacheSchemaVersion)),
		"normalize="+strconv.FormatBool(opts.Normalize),
		"max="+strconv.Itoa(opts.MaxDiagnostics),
	)
}
