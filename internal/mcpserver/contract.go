package mcpserver

// DocumentFormatContract describes the canonical portfolio data file that
// LLM consumers should follow when constructing documents for import.
const DocumentFormatContract = `# Portfolio Document Format

A portfolio data file is a single JSON object, conventionally named
` + "`" + `portfolio_data.json` + "`" + `.

## Structure

` + "```" + `json
{
  "name": "Ada Lovelace",
  "bornYear": "1815",
  "pronouns": "she/her",
  "image": "https://example.com/ada.png",
  "shortBio": "One-line summary shown in headers.",
  "longBio": "Longer free-form biography.",
  "title": "Analyst",
  "location": "London",
  "resumeLink": "https://example.com/resume.pdf",
  "socials": [
    {"platform": "github", "url": "https://github.com/ada"}
  ],
  "jobsProjects": [
    {
      "id": "generated on import, do not invent",
      "isJob": true,
      "title": "Backend Engineer",
      "startDate": "2020-01-01T00:00:00Z",
      "endDate": "2020-06-01T00:00:00Z",
      "isCurrent": false,
      "description": "What the role involved.",
      "links": ["https://example.com/project"],
      "skills": ["go", "sql"]
    }
  ],
  "education": [
    {
      "institutionName": "Example University",
      "courseName": "Mathematics BSc",
      "startDate": "2016-09-01T00:00:00Z",
      "endDate": "2019-06-01T00:00:00Z",
      "isCurrent": false,
      "description": "",
      "links": []
    }
  ],
  "achievements": [
    {
      "name": "Best Paper Award",
      "dateAwarded": "2021-03-01T00:00:00Z",
      "description": "",
      "links": [],
      "skills": []
    }
  ]
}
` + "```" + `

## Rules

1. **The top level must be a JSON object.** Anything else is rejected.
2. **Dates** are RFC 3339 timestamps or bare ` + "`" + `YYYY-MM-DD` + "`" + ` strings.
   Only the calendar day is significant; times are discarded.
3. **Current entries** set ` + "`" + `"isCurrent": true` + "`" + ` and omit ` + "`" + `endDate` + "`" + `.
   An end date supplied alongside ` + "`" + `isCurrent` + "`" + ` is dropped.
4. **Missing or mistyped fields** fall back to empty values rather than
   failing the import, so partial documents are acceptable.
5. **Required for export:** name, image, short bio, title, and location,
   plus per-record titles and dates. Import is lenient; export validates.
6. **Ids** are assigned by the application. Leave them out when
   constructing a document by hand.
`
