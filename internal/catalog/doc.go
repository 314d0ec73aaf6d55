/*
Package catalog builds and persists translation catalogs.

A catalog maps a source literal, exactly as it appears in the code, to its
translation for one locale. The template forms are generated from extraction
records:

  - a PO-style listing (BuildTemplate), one entry per occurrence with its
    "file:line" reference and an empty msgstr;
  - a JSON key set (FromRecords), the distinct literals with empty values.

Per-language catalogs are derived from the JSON template with Merge, which
never overwrites an existing translation. Templates are written in byte order
(ByteOrder); language catalogs are written case-insensitively (FoldedOrder).
*/
package catalog
