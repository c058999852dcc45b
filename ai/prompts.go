package ai

// ConvertPrompt instructs the model to turn raw text extracted from an
// academic PDF into clean markdown.
const ConvertPrompt = `Convert this raw text extracted from an academic PDF into clean, well-structured markdown. Follow these rules:

1. Use proper markdown headers (# for title, ## for sections, ### for subsections)
2. Preserve all technical content: equations, formulas, data, metrics, method names
3. Format tables as markdown tables
4. Skip these sections entirely: References, Bibliography, Acknowledgements, Table of Contents
5. Skip page headers, footers, and page numbers
6. Keep figure/table captions but note them as [Figure X] or [Table X]

Return ONLY the markdown content, no explanations.`

// DensifyPrompt instructs the model to compress one section of a paper while
// preserving its technical content.
const DensifyPrompt = `You are a scientific text densifier. Your job is to compress this section of an academic paper while preserving ALL:
- Key findings, results, and conclusions
- Numerical data, metrics, and measurements
- Mathematical formulas and equations
- Method names and technical terminology
- Comparisons and rankings

Remove:
- Filler phrases ("It is well known that...", "In this section we...")
- Redundant explanations of basic concepts
- Verbose transitions between ideas
- Self-referential text ("As shown in Table 3...")

Return ONLY the densified text in markdown format. Keep section headers. Aim for ~40-60% of the original length.

Section to densify:
`
