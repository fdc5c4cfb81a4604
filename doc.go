// Package docbridge binds the iText PDF class library, running in a foreign
// managed runtime, to typed Go wrappers.
//
// The library is organized into several packages with distinct responsibilities:
//
//	docbridge/
//	├── foreign/         Handles, execution contexts, marshaling and constants
//	│   └── foreigntest/ In-process reference runtime used by tests and -dry-run
//	├── heap/            Reference table backing foreign object handles
//	├── wire/            CBOR request/response protocol between host and guest
//	├── engine/          wazero host for the guest build of the class library
//	├── runtime/         Opens a dispatcher and hands out execution contexts
//	├── bundle/          Compressed, checksummed guest archive
//	├── config/          DOCBRIDGE_* environment configuration
//	├── errors/          Structured errors with phase and kind
//	├── jdk/             Byte streams and image decoding
//	└── itext/
//	    ├── iodata/      Image data, font programs, standard fonts, encodings
//	    ├── kernel/      PDF documents, pages, geometry, colors, fonts
//	    ├── layout/      Document model elements and their capability traits
//	    └── barcode/     EAN/UPC barcodes
//
// # Quick Start
//
// Render a paragraph into an in-memory PDF:
//
//	rt, err := runtime.Open(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer rt.Close(ctx)
//
//	env := rt.Attach(ctx)
//	out, _ := jdk.NewByteArrayOutputStream(env)
//	w, _ := kernel.NewPdfWriter(env, out)
//	pdf, _ := kernel.NewPdfDocument(env, w)
//	doc, _ := layout.NewDocument(env, pdf)
//
//	p, _ := layout.NewParagraphText(env, "Hello")
//	layout.Style(env, p).Bold().FontSize(14)
//	doc.Add(env, p)
//	doc.Close(env)
//	b, _ := out.ToByteArray(env)
//
// # Execution Contexts
//
// Every foreign call goes through a *foreign.Env obtained from
// runtime.Attach. An Env serves one goroutine at a time and rejects handles
// created by another Env. Errors carry the phase, the member being called
// and, for foreign exceptions, the exception class:
//
//	var e *errors.Error
//	if errors.As(err, &e) && e.Kind == errors.KindException {
//		log.Println(e.Exception)
//	}
//
// # Testing
//
// foreigntest.Runtime implements foreign.Dispatcher in process. Wrap it with
// wire.Loopback to exercise the wire protocol without a guest:
//
//	rt := runtime.NewWithDispatcher(wire.Loopback(foreigntest.New()))
package docbridge
